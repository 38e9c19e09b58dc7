// Package dashboard holds the render target: the loading text, the table
// body, the count label and the status dot of the page. The feed renderer
// writes into a Page; HTTP handlers read consistent snapshots of it.
package dashboard
