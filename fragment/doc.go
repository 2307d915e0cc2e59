// Package fragment models the typed content values of a document and
// renders them as HTML or plain text.
//
// A document's fields arrive as JSON tagged with a kind, such as "Text",
// "Image", or "StructuredText". Each kind parses into its own Go type, and
// every type implements the Fragment interface. The set of kinds is closed:
// JSON with an unknown kind tag fails to parse rather than producing a
// silent placeholder.
//
// ## Rendering
//
// Fragment.AsHTML renders a fragment as an HTML string with all text
// content escaped. Rendering a link to another document requires a
// LinkResolver, supplied by the application, that turns the link into a
// URL. Rendering that reaches a document link without a resolver fails
// with ErrMissingResolver rather than dropping the link.
//
// Fragment.AsText extracts plain text. Kinds with no sensible text form,
// such as images and links, fail with an UnsupportedOpError.
//
// ## Structured Text
//
// The StructuredText kind is a sequence of blocks (paragraphs, headings,
// list items, images, embeds). Text blocks carry formatting spans that mark
// rune ranges as emphasized, strong, linked, or labeled. Rendering overlays
// the spans on the text, producing well-formed nested markup even when the
// source spans cross each other's boundaries.
package fragment
