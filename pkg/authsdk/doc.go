// Package authsdk provides a Go client SDK for the gatekit
// authentication service, along with the wire types and error values
// the server handlers share with it.
package authsdk
