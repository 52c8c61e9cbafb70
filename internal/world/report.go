package world

import (
	"fmt"
	"io"
	"strings"
)

// WriteReport writes the seven-line group report.
func (g *Group) WriteReport(out io.Writer) error {
	_, err := fmt.Fprintf(out,
		"Group's name: %s\n"+
			"Group's clan: %s\n"+
			"Group's children: %d\n"+
			"Group's adults: %d\n"+
			"Group's tools: %d\n"+
			"Group's food: %d\n"+
			"Group's morale: %d\n",
		g.name, g.clan, g.children, g.adults, g.tools, g.food, g.morale)
	return err
}

func (g *Group) String() string {
	var b strings.Builder
	_ = g.WriteReport(&b)
	return b.String()
}

// WriteReport writes the clan name and its group names, strongest first.
func (c *Clan) WriteReport(out io.Writer) error {
	if _, err := fmt.Fprintf(out, "Clan's name: %s\nClan's groups:\n", c.name); err != nil {
		return err
	}
	for _, g := range c.ByStrength() {
		if _, err := fmt.Fprintln(out, g.name); err != nil {
			return err
		}
	}
	return nil
}

func (c *Clan) String() string {
	var b strings.Builder
	_ = c.WriteReport(&b)
	return b.String()
}
