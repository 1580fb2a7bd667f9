// Package newick reads phylogenetic trees from Newick formatted input.
//
// The Newick grammar is the nested-parenthetical tree description used
// across phylogenetics tooling: '(' opens a clade, ',' separates sibling
// subtrees, ')' closes the clade, an optional label follows a tip or a
// closing ')', ':' followed by a numeric literal attaches a branch length
// to the element just closed, and ';' terminates the description.
//
//	(A:1,(B:2,C:0.5)inner:0.3)root;
//
// Parsing preserves everything the source text says and nothing more:
// sibling order is kept as encountered, labels on internal nodes are
// retained, and a missing branch length stays absent rather than being
// coerced to zero. Layout modes treat "absent" and "zero" differently,
// so the distinction matters downstream.
//
// Errors carry the SYNTAX_ERROR code with line and character offset, or
// NOT_FOUND when the input path does not resolve to a readable file.
package newick
