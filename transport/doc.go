// Package transport exposes shapetree trees over HTTP: POST a [shapetree.TreeUpdate]
// to mutate a tree, GET a debug dump of its current state. It is the one
// concrete wire framing shapetree ships, built on a router with structured
// request logging.
package transport
