// Package speedfix decides whether donor audio needs the fixed PAL tempo
// correction before muxing against film-rate video.
package speedfix
