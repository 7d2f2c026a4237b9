// Package eventservice owns event metadata: titles, schedule windows and the
// venue a resolved location poll writes back.
package eventservice
