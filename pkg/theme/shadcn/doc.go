// Package shadcn ships a design-system theme for the HTML renderer: themed
// widgets registered in the widget role, the environment-variable editor
// registered in both the widget and field roles, layout templates, and a
// go-theme manifest with a dark variant.
package shadcn
