package blocks

// ErrorBlock creates the urgent block shown when the status command fails.
func ErrorBlock(name, msg string) Block {
	return Block{
		Name:                name,
		FullText:            msg,
		Urgent:              true,
		Separator:           false,
		SeparatorBlockWidth: 0,
	}
}
