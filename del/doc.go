/*
Package del turns declaration syntax nodes into schema mutation commands and back.

A command tree is plain data: an operation tag, a target object kind and qualified name, an
ordered list of attribute assignments and nested subcommands. Build constructs a command tree
from a syntax node against a schema snapshot, filling in implied attributes and evaluating
embedded constant expressions. Apply executes a built tree against a schema and returns a new
schema, the input snapshot is never changed. Node projects a command back onto a fresh syntax
node, the exact inverse of Build over the attributes Build records.

Construction threads an explicit context through nested nodes. The context holds a frame stack
so a child command can resolve the subject it is declared under without an explicit reference,
and frames are popped on every exit path so no state leaks across sibling commands. The context
also carries the evaluator used for embedded expressions and a logger for apply tracing.
*/
package del
