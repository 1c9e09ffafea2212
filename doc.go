/*
Package jbovlaste is a set of libraries for the jbovlaste lojban
dictionary XML export.

The export is read by a strict streaming parser (package dictionary)
built on a small cursor over XML tokens (package xmlutil). Any element,
attribute or text the export format does not define, any missing
required field and any unparseable value fails the parse with a
*dicterr.Error naming the record and field at fault.

The parsed Dictionary serializes to JSON with WriteJSON. Package export
downloads the export from a jbovlaste server, and the jbovlaste2json
command under cmd/ ties the two together.
*/
package jbovlaste
