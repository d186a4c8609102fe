/*
Package seo holds the site configuration and the content-derivation
helpers for the static SEO page generator: validated settings, cached
display lookups (country flags, tax authority names), slug builders
and keyword assembly.

Everything here is pure computation over the structured JSON content
supplied by the caller; nothing performs I/O.
*/
package seo
