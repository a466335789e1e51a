// Package blueprint encodes a solved layout into the JSON -> zlib -> base64
// exchange string format a third-party factory game's blueprint-import
// feature expects. It consumes only what pkg/extract yields: a row-major
// sequence of (x, y, Component) records and the grid dimensions.
package blueprint
