// Package js models the handful of JavaScript values a webpack configuration
// needs beyond plain data (regular expressions, constructor and function
// calls, required identifiers) and prints Go values as JavaScript source.
package js
