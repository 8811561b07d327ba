// Package webpack assembles webpack configuration records: output filenames,
// the ordered plugin and rule lists, and the two-stage Factory that merges
// run-time options into project-fixed ones.
package webpack
