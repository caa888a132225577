// Package preview encodes, attaches and checks SVG previews of font families.
//
// Previews are rendered outside this module. Here they are minified,
// gzip-compressed at the best level and stored on the family together with
// the encoded size and the text they render.
package preview
