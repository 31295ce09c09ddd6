package i18n

// EnMessages English message catalog
var EnMessages = map[string]string{
	// Toasts - session
	"toast.login_success":     "Successfully logged in!",
	"toast.register_success":  "Account created successfully!",
	"toast.login_failed":      "Invalid credentials",
	"toast.register_failed":   "Registration failed",
	"toast.logout":            "Logged out successfully",
	"toast.password_mismatch": "Passwords do not match",
	"toast.password_short":    "Password must be at least %d characters",

	// Toasts - generation
	"toast.url_empty":          "Please enter a valid URL",
	"toast.url_invalid":        "Please enter a valid URL format",
	"toast.generate_failed":    "Failed to generate content",
	"toast.generate_empty":     "No content generated. Please try again with a different URL.",
	"toast.generate_success":   "Content generated successfully!",
	"toast.generate_transport": "Failed to generate content. Please try again later.",

	// Toasts - content
	"toast.description_saved": "Description updated!",
	"toast.save_failed":       "Failed to save description: %v",
	"toast.copied":            "%s copied to clipboard!",
	"toast.copy_failed":       "Failed to copy to clipboard",

	// Copy labels
	"label.all_titles":       "All titles",
	"label.title":            "Title %d",
	"label.description":      "Description",
	"label.description_html": "Description (HTML)",
	"label.bullets":          "Bullet points",
	"label.bullet":           "Bullet point %d",
	"label.keywords":         "Keywords report",

	// UI - auth screen
	"auth.login_title":    "Sign in",
	"auth.register_title": "Create account",
	"auth.email":          "Email",
	"auth.password":       "Password",
	"auth.confirm":        "Confirm password",
	"auth.switch_hint":    "ctrl+r switch sign in / create account",
	"auth.signing_in":     "Signing in...",

	// UI - dashboard
	"dash.title":          "AI-Powered Product Text Wizard",
	"dash.url":            "Competitor product URL",
	"dash.url_hint":       "e.g., https://www.amazon.com/dp/B0BP7M5F3M",
	"dash.analyzing":      "Analyzing: %s",
	"dash.pending":        "AI is analyzing your product...",
	"dash.pending_detail": "This may take a few moments while we generate optimized content",
	"dash.titles":         "Suggested Product Titles",
	"dash.option":         "Option %d",
	"dash.description":    "Suggested Product Description",
	"dash.bullets":        "Key Feature Bullet Points",
	"dash.keywords":       "Keywords & SEO Report",
	"dash.editing":        "Editing description (ctrl+s save, esc cancel)",
	"dash.empty":          "Submit a product URL to generate listing copy",

	// UI - sidebar / status
	"sidebar.account": "Account",
	"sidebar.tokens":  "Tokens",
	"sidebar.mode":    "Mode",
	"status.ready":    "Ready",
	"status.pending":  "Generating...",
	"status.failed":   "Failed",
	"status.done":     "Done",
	"status.demo":     "demo",
	"help.auth":       "enter submit · tab next field · ctrl+r switch · ctrl+c quit",
	"help.dash":       "enter generate · ctrl+e edit · ctrl+t/d/b/k/y copy · alt+1-9 copy title · ctrl+l logout",
	"help.edit":       "ctrl+s save · esc cancel",

	// Commands (REPL)
	"cmd.help":     "Show available commands",
	"cmd.login":    "Sign in: /login <email>",
	"cmd.register": "Create account: /register <email>",
	"cmd.logout":   "Sign out",
	"cmd.whoami":   "Show the current account",
	"cmd.generate": "Generate copy: /generate <url> (or paste a bare URL)",
	"cmd.show":     "Show the current result",
	"cmd.keywords": "Show the keyword report as a list",
	"cmd.edit":     "Edit the description (finish with a single '.')",
	"cmd.save":     "Save the edited description",
	"cmd.cancel":   "Discard the edited description",
	"cmd.copy":     "Copy: /copy titles|title N|description|html|bullets|bullet N|keywords",
	"cmd.tokens":   "Show token counts of the current result",
	"cmd.lang":     "Switch language: /lang en|zh-CN",
	"cmd.exit":     "Exit application",

	// REPL
	"repl.not_signed_in": "Not signed in",
	"repl.signed_in_as":  "Signed in as %s",
	"repl.no_result":     "No generated content yet",
	"repl.unknown":       "Unknown command: %s",
	"repl.password":      "Password: ",
	"repl.confirm":       "Confirm password: ",
	"repl.edit_hint":     "Enter the new description, end with a line containing only '.'",
	"repl.edit_pending":  "Description buffer updated; /save to keep it or /cancel to discard",

	// Startup
	"startup.welcome":   "listingcrew started (api: %s)",
	"startup.demo_mode": "Demo mode is on: sign-in failures fall back to a local demo session",
	"startup.repl_mode": "Running in REPL mode",
}
