// Package class provides explicit method tables for Go values.
//
// Go cannot redefine methods at runtime, so a Class models a named type whose
// methods live in two tables, one per Scope:
//   - Instance methods take the receiver as their first parameter, which is
//     exactly the shape of a Go method expression such as (*Calc).Add.
//   - Type methods are plain funcs invoked on the class itself.
//
// Define is the single definition event. Every (re)definition gets a new
// revision and is delivered to the class's observers, which lets other
// packages react to methods as they are added, including methods defined
// after the observer was installed.
//
// Lookup walks the parent chain, so subclasses inherit their ancestors'
// methods. Own only considers the class's own tables.
package class
