package models

// DefaultProjects is the project list shown when the config file has none.
var DefaultProjects = []Project{
	{
		Name:        "ConnectYou",
		Description: "Lightweight & clean version of LinkTree. It's Cool 😎.",
		Link:        "https://connect-you.vercel.app/",
	},
	{
		Name:        "Taskmaster",
		Description: "A minimal all-in-one task manager that suits your needs.",
		Link:        "https://github.com/rocketburst/taskmaster/",
	},
	{
		Name:        "Portfolio",
		Description: "The minimal website you're looking at",
		Link:        "https://github.com/rocketburst/portfolio/",
	},
}

// Validate checks the project fields.
func (p *Project) Validate() error {
	return validate.Struct(p)
}

// Validate checks the site configuration.
func (c *SiteConfig) Validate() error {
	return validate.Struct(c)
}
