// Package bridge runs an external similarity-search process per query and
// decodes its mixed stdout into neighbors.
package bridge
