// Package admin holds the administrator account model and its persistence
// collaborators: the account store and the audit sink, both backed by
// MongoDB collections.
//
// The Account struct is a plain snapshot with no behavior attached; all
// mutation goes through Store methods expressed as conditional updates so
// concurrent login attempts cannot double-consume a backup code or clobber
// the failure counter.
package admin
