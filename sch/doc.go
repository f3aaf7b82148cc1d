/*
Package sch provides the catalog object model for schema declarations.

A schema is an immutable set of catalog objects addressed by qualified name. Objects are plain
values composed of named fields; every mutating operation returns a new schema value and leaves
the receiver untouched, so any number of readers can share snapshots without coordination.

Each object kind declares its fields in a descriptor table registered at package init. A field
descriptor carries the declared value type, an optional default, whether the field propagates to
inheriting objects, whether it is ephemeral, and a comparison coefficient used to weigh field
changes when scoring the difference of two schema snapshots. Ephemeral fields are derived state,
they are never hashed, diffed or inherited.

Objects can inherit from a list of base objects named in declaration order. Field resolution
returns the local value if set, otherwise the first base with a resolved value, provided the
field descriptor allows inheritance.

Reference ownership between a subject object and its short-name addressed children is kept in the
schema itself. A child's qualified name is always derived from the subject name and the child's
short name, and the subject's collection field is ephemeral and resynchronized on every add or
remove, so the collection can never drift from the actual set of children.
*/
package sch
