// Package markup provides a generic structured-markup tree used as the
// input representation for the word-processing table extractor.
//
// The tree is deliberately independent of any particular document object
// model: a node is just a tag, an attribute map, child nodes, and text.
// The host supplies an adapter from its native parser to this form; the
// package ships two reference adapters:
//
//   - [ParseXML] builds a tree from an XML token stream (suitable for
//     OOXML and ODF document fragments). Namespace prefixes are dropped,
//     so a <w:tbl> element has tag "tbl".
//   - [ParseHTML] builds a tree from an HTML document.
//
// Whitespace-only text between elements is discarded by both adapters;
// all other character data is preserved verbatim.
package markup
