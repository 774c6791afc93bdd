// Package model defines the descriptor types the rest of the module consumes:
// a Form made of ordered Field descriptors, the closed FieldKind enumeration
// with its explicit Unknown fallback, and the ValidationRule constraints the
// validation contract is built from.
package model
