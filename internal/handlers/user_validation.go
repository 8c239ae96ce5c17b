package handlers

import (
	"strings"
)

var allowedGenders = map[string]struct{}{
	"male":              {},
	"female":            {},
	"other":             {},
	"prefer-not-to-say": {},
}

var allowedFitnessLevels = map[string]struct{}{
	"beginner":     {},
	"intermediate": {},
	"advanced":     {},
}

var allowedActivityLevels = map[string]struct{}{
	"sedentary":         {},
	"lightly_active":    {},
	"moderately_active": {},
	"very_active":       {},
	"extremely_active":  {},
}

var allowedPrimaryGoals = map[string]struct{}{
	"weight_loss":       {},
	"muscle_gain":       {},
	"maintenance":       {},
	"endurance":         {},
	"health_management": {},
}

var allowedPrivacyLevels = map[string]struct{}{
	"private":      {},
	"friends_only": {},
	"public":       {},
}

var allowedDataRetentions = map[string]struct{}{
	"1_year":  {},
	"2_years": {},
	"forever": {},
}

var allowedThemeIDs = map[string]struct{}{
	"default":  {},
	"lavender": {},
	"mint":     {},
	"sky":      {},
}

func validateUpdateUserRequest(req updateUserProfileRequest) string {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return "name must not be empty"
	}
	if req.Gender != nil {
		if err := validateEnum(*req.Gender, allowedGenders, "gender", "male, female, other, prefer-not-to-say"); err != "" {
			return err
		}
	}
	if req.Height != nil && *req.Height <= 0 {
		return "height must be greater than 0"
	}
	if req.Weight != nil && *req.Weight <= 0 {
		return "weight must be greater than 0"
	}
	if req.DateOfBirth != nil && *req.DateOfBirth < 0 {
		return "dateOfBirth must be an epoch-millisecond timestamp"
	}
	if req.FitnessLevel != nil {
		if err := validateEnum(*req.FitnessLevel, allowedFitnessLevels, "fitnessLevel", "beginner, intermediate, advanced"); err != "" {
			return err
		}
	}
	if req.ActivityLevel != nil {
		if err := validateEnum(*req.ActivityLevel, allowedActivityLevels, "activityLevel",
			"sedentary, lightly_active, moderately_active, very_active, extremely_active"); err != "" {
			return err
		}
	}
	if req.PrimaryGoal != nil {
		if err := validateEnum(*req.PrimaryGoal, allowedPrimaryGoals, "primaryGoal",
			"weight_loss, muscle_gain, maintenance, endurance, health_management"); err != "" {
			return err
		}
	}
	if req.PrivacyLevel != nil {
		if err := validateEnum(*req.PrivacyLevel, allowedPrivacyLevels, "privacyLevel", "private, friends_only, public"); err != "" {
			return err
		}
	}
	if req.DataRetention != nil {
		if err := validateEnum(*req.DataRetention, allowedDataRetentions, "dataRetention", "1_year, 2_years, forever"); err != "" {
			return err
		}
	}
	if req.ThemeID != nil {
		if err := validateEnum(*req.ThemeID, allowedThemeIDs, "themeId", "default, lavender, mint, sky"); err != "" {
			return err
		}
	}
	if req.OnboardingStep != nil && (*req.OnboardingStep < 1 || *req.OnboardingStep > 4) {
		return "onboardingStep must be between 1 and 4"
	}
	if err := validateStringList(req.HealthConditions, "healthConditions"); err != "" {
		return err
	}
	if err := validateStringList(req.Allergies, "allergies"); err != "" {
		return err
	}
	if err := validateStringList(req.DietaryPreferences, "dietaryPreferences"); err != "" {
		return err
	}
	if req.Timezone != nil && strings.TrimSpace(*req.Timezone) == "" {
		return "timezone must not be empty"
	}
	return ""
}

func validateEnum(value string, allowed map[string]struct{}, field, options string) string {
	if _, ok := allowed[strings.TrimSpace(value)]; !ok {
		return field + " must be one of: " + options
	}
	return ""
}

func validateStringList(values *[]string, field string) string {
	if values == nil {
		return ""
	}
	for _, value := range *values {
		if strings.TrimSpace(value) == "" {
			return field + " must not contain empty values"
		}
	}
	return ""
}
