// Package report renders a finished site analysis for humans and tools.
//
// Three writers share one interface: a plain-text writer for terminals,
// a JSON writer for programmatic consumers, and a Markdown writer for
// documentation and sharing. A MultiWriter fans one report out to
// several destinations, typically terminal plus file.
package report
