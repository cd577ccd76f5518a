package model

// All returns every model migrated at start-up, keyed by table name.
func All() map[string]any {
	return map[string]any{
		"activity_types": &ActivityTypeModel{},
		"entries":        &EntryModel{},
		"users":          &UserModel{},
		"profiles":       &ProfileModel{},
		"refresh_tokens": &RefreshTokenModel{},
		"goals":          &GoalModel{},
		"email_queue":    &EmailQueueModel{},
	}
}

// Migrations lists the models in dependency order for AutoMigrate.
func Migrations() []any {
	return []any{
		&ActivityTypeModel{},
		&UserModel{},
		&ProfileModel{},
		&RefreshTokenModel{},
		&EntryModel{},
		&GoalModel{},
		&EmailQueueModel{},
	}
}
