// Package render writes assembled webpack configs out as a webpack.config.js
// module or as JSON.
package render
