// Package vcd is a client for the VMware Cloud Director tenant API.
//
// It covers what lab provisioning needs: catalog queries and creation,
// OVF uploads from a URL, task status, API token registration and IP space
// allocation through the cloudapi endpoints. Legacy /api endpoints speak
// JSON responses with XML request bodies; /cloudapi endpoints are JSON only.
package vcd
