// Package openapi describes the submitted registration record as an OpenAPI
// 3 contract. The public types here stay free of kin-openapi; the builder and
// validator implementations live under internal/openapi and are constructed
// through the root regform package.
package openapi
