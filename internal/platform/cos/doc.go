// Package cos checks catalog item sources held in IBM Cloud Object Storage
// (or any S3-compatible store) before they are handed to Cloud Director.
//
// Sources are public object URLs in path style
// (https://<endpoint>/<bucket>/<key>). Objects are probed with HEAD requests,
// anonymously unless HMAC keys are configured.
package cos
