// Package security holds the pure building blocks of authentication and
// authorization: password hashing and verification, role-to-authority
// resolution and the path-prefix access policy. Nothing here touches HTTP
// or storage.
package security
