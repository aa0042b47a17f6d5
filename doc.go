/*
Package earlgrey compiles a user-authored grammar — delivered as an
already-validated list of rules, see package grammar — into a runtime
parsing engine.

Given input text and the name of a start nonterminal, the engine recognizes
the input with a chart-based (Earley-style) recognizer, reconstructs one
concrete derivation tree, and interprets that tree through each rule's
output specification into a tagged value.Value (a resource, a dictionary,
or a scalar).

Package structure is as follows:

■ token: segments input text into scalar-typed atoms.

■ grammar: the in-memory grammar model — symbols, productions, output
specs, nullable analysis, nullable-cycle detection, and the rule-intake
types produced by an (external) surface-syntax parser.

■ chart: the Earley-style recognizer.

■ deriv: reconstructs one concrete derivation tree from a completed chart.

■ value: the tagged result value.

■ interp: walks a derivation tree and a grammar's output specs to produce
a value.Value.

■ diag: on recognition failure, reports the furthest reachable position
and the continuations that would have been accepted there.

■ config: engine configuration (resource budgets, trace level).

The base package contains the types shared across all of the above: Span
(an alias for token.Span, the range type Token and deriv.Node track their
match against), the engine itself, and the error types returned at its
boundary.
*/
package earlgrey
