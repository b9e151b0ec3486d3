package database

// Tabels is migrated in order; children come after their parents.
var Tabels []interface{} = []interface{}{
	&User{},
	&LoginSession{},
	&AutomationSession{},
	&SessionMessage{},
	&SessionIntegration{},
	&Automation{},
}
