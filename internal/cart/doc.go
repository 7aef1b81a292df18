// Package cart implements the cart aggregate: lazy cart creation, line
// increments, listing with catalog joins, and clearing, all over the generic
// store client.
package cart
