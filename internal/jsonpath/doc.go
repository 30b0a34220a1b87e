// Package jsonpath extracts subtrees from a JSON document in a single
// streaming pass, holding only the current nesting path and the subtrees
// being collected.
//
// Patterns use a small dotted/bracket grammar:
//   - `name` or `.name` selects an object member, `*` selects every member
//   - `[n]` selects an array element by 0-based index, `[*]` every element
//
// For example `store.book[*].author` or `[0][*]`. Filters, slices, unions and
// recursive descent are not supported. Matching always starts at the root
// container; the root value itself is never reported.
//
// An Engine compiles patterns, consumes the events produced by the
// tokenizer and hands every completed match to the registered handlers in
// document order.
package jsonpath
