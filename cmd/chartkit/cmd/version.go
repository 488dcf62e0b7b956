package cmd

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  `Print the chartkit version and build time.`,
		Usage: "chartkit version",
		Run: func(args []string) error {
			printVersion()
			return nil
		},
	})
}
