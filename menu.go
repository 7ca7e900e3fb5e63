package main

import (
	"fmt"
	"strings"
)

// menuItem is one example in the picker.
type menuItem struct {
	name        string
	description string
	qubits      int
}

// menuCategory groups examples under a tab.
type menuCategory struct {
	name  string
	items []menuItem
}

// exampleMenu groups the built-in examples by category, keeping their order.
var exampleMenu = buildExampleMenu(examples)

func buildExampleMenu(exs []example) []menuCategory {
	var cats []menuCategory
	index := map[string]int{}
	for _, ex := range exs {
		i, ok := index[ex.Category]
		if !ok {
			i = len(cats)
			index[ex.Category] = i
			cats = append(cats, menuCategory{name: ex.Category})
		}
		var qubits int
		if c, err := loadExample(ex.Name); err == nil {
			qubits = c.NumQubits
		}
		cats[i].items = append(cats[i].items, menuItem{
			name:        ex.Name,
			description: ex.Description,
			qubits:      qubits,
		})
	}
	return cats
}

// renderMenu renders the floating example picker.
func (m Model) renderMenu() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Load Example"))
	sb.WriteString("\n")

	for i, cat := range exampleMenu {
		name := " " + cat.name + " "
		if i == m.menuCat {
			sb.WriteString(activeGateStyle.Render(name))
		} else {
			sb.WriteString(dimStyle.Render(name))
		}
		if i < len(exampleMenu)-1 {
			sb.WriteString(dimStyle.Render("│"))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(dimStyle.Render(strings.Repeat("─", 48)))
	sb.WriteString("\n")

	cat := exampleMenu[m.menuCat]
	for i, item := range cat.items {
		label := fmt.Sprintf("%-14s", item.name)
		if i == m.menuItem {
			sb.WriteString(menuSelectedStyle.Render(" ▸ " + label))
		} else {
			sb.WriteString("   " + menuNormalStyle.Render(label))
		}
		sb.WriteString(dimStyle.Render(fmt.Sprintf(" %dq  %s", item.qubits, item.description)))
		sb.WriteString("\n")
	}
	sb.WriteString(dimStyle.Render(" ↑↓ Select  ←→ Cat  ⏎ Load  Esc ✕"))

	return menuBorderStyle.Render(sb.String())
}
