package utils

import "github.com/MrSnakeDoc/navsync/internal/logger"

type Field struct {
	Name  string
	Value string
}

func CreateFieldTable(title string, fields []Field) {
	if title != "" {
		logger.Info("%s", title)
	}

	table := logger.CreateTable([]string{"Field", "Value"})

	for _, f := range fields {
		err := table.Append([]string{f.Name, f.Value})
		if err != nil {
			logger.LogError("Error appending to table: %v", err)
			return
		}
	}

	err := table.Render()
	if err != nil {
		logger.LogError("Error rendering table: %v", err)
		return
	}
}
