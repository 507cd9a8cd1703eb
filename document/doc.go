// Package document loads server configuration XML documents.
//
// A [Document] is an immutable view of the parts of a server.xml that matter for
// application discovery: the application elements, the <include> locations, and the
// <variable> definitions that are direct children of the <server> root element.
// Everything else in the document is ignored, and no schema validation is performed.
//
// Loading is permissive by contract: a document that is not well-formed XML, or whose
// root element is not <server>, yields a [scerrors.ParseError] that callers use to skip
// the input. Read failures are returned as ordinary wrapped errors so they can be told
// apart from "this is not a configuration file".
//
// Example:
//
//	doc, err := document.LoadFile("server.xml")
//	if errors.Is(err, scerrors.ErrParse) {
//	    // not a server configuration document
//	}
//	for _, app := range doc.Applications() {
//	    fmt.Println(app.Kind, app.Location)
//	}
package document
