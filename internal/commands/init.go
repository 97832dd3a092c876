package commands

import (
	_ "fermata/internal/commands/core"
)

// import all self-registering commands to trigger init
