/*
Package inventory tracks the pages emitted by a generation run in a
SQLite database, so sitemap generation and stale-page pruning work
across runs without rescanning the output directory.
*/
package inventory
