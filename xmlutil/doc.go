/*
Package xmlutil provides a pull cursor over the lexical events of an XML
document.

The Reader flattens encoding/xml tokens into the finer grained event
stream a recursive-descent reader wants: an ElementStart, one Attribute
per attribute, then an ElementEnd saying whether the start tag was
self-closing (EndEmpty) or opened content (EndOpen). Content follows as
Text and nested elements until the matching ElementEnd of kind EndClose.
Self-closing elements have no EndClose event.

Comments, processing instructions and directives are dropped. Namespace
prefixes are not resolved against any schema; attribute keys keep their
prefix ("xmlns:foo").
*/
package xmlutil
