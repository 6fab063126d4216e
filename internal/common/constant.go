// Package common contains shared constants and sentinel errors used across
// GophDrive components.
package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// RootFolderSelector addresses the user's root folder wherever a folder id
// is expected.
const RootFolderSelector = "home"
