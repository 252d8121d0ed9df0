package theme

// Catalog keys for the messages this package shows to administrators.
const (
	msgCSSMissing       = "Cannot find theme.css in %s"
	msgInvalidExtension = "Not a valid theme extension in %s"
	msgExtensionFailed  = "Theme %s failed to set up. Error was: %v"
	msgAlreadyActive    = "Theme already activated"
	msgNotActive        = "Theme not active"
	msgInvalidName      = "Invalid theme name: %s"
	msgDeactivated      = "Deactivated theme: %s"
	msgUndefinedStep    = "Undefined template function %s"
	msgOnlyCSSJS        = "You can only enqueue \"css\" or \"js\" files"
)

// Hook names fired or applied by the theme layer.
const (
	ActionInitTheme          = "init_theme"
	ActionPreLoadActiveTheme = "pre_load_active_theme"
	ActionLoadActiveEmpty    = "load_active_theme_empty"
	ActionLoadActiveTheme    = "load_active_theme"
	ActionThemeLoaded        = "theme_loaded"
	ActionActivatedTheme     = "activated_theme"
	ActionDeactivatedTheme   = "deactivated_theme"

	FilterAssetsQueue     = "html_assets_queue"
	FilterTemplateContent = "html_template_content"
	FilterActiveTheme     = "get_active_theme"
	FilterSortField       = "themes_sort_field"
	FilterSortOrder       = "themes_sort_order"
)
