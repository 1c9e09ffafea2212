// Package dicterr defines the errors reported while reading a jbovlaste
// dictionary export.
//
// Every schema violation is an *Error whose Kind says what went wrong and
// whose Name and Field locate it: Name is the record (element) being read
// and Field the attribute or child element at fault. Value errors also
// carry the raw text that failed to parse.
package dicterr
