// Package options defines the options bag consumed by the webpack config
// factory: its optional-field schema, the production classifier, per-plugin
// option lookup, the fixed-over-override merge and file loading.
package options
