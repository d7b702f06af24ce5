// Package node provides a registry of integration nodes for image
// pipeline hosts.
//
// A node is one step in an image pipeline: it receives a batch of
// images and a caption, performs its side effect (such as posting to a
// webhook), and returns the images unchanged so downstream steps can
// reuse them.
//
// # Usage
//
// Node implementations register themselves from an init function,
// following the database/sql driver convention. Hosts enable a node by
// blank-importing its package and looking it up by name:
//
//	import _ "github.com/imgship/imgship/pkg/node/discordpost"
//
//	n, err := node.New("DiscordPostViaWebhook")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := n.Execute(ctx, images, "render finished")
//
// Use [Mappings] to enumerate the registered node types and
// [DisplayNames] for their human-readable labels.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
package node
