/*
Package render compiles the page templates once and turns a per-page
context mapping into a finished HTML document.

Templates live on the filesystem: full pages as *.tmpl.html and
composable fragments as *.part.html. Context values are escaped by
html/template's contextual auto-escaping; callers mark pre-rendered
fragments safe explicitly with template.HTML (or template.CSS /
template.JS for the style and structured-data slots). Keys the
templates reference but the caller omits render as empty values,
never as an error.
*/
package render
