package dynamodb

import "strings"

// Single-table layout. GSI1 and GSI2 are both keyed on (GSInPK, GSInSK) and
// the sort keys are "<createdAt>#<id>" so a descending query is newest first.
const (
	gsi1 = "GSI1"
	gsi2 = "GSI2"

	notExists = "attribute_not_exists(PK)"
	exists    = "attribute_exists(PK)"

	metaSK             = "META"
	profileSK          = "PROFILE"
	artisanProfileSK   = "ARTISAN_PROFILE"
	applicantProfileSK = "APPLICANT_PROFILE"
	authUserSK         = "USER"
	categoriesPK       = "CATEGORY"
	categoryNameSK     = "NAME"
	allProgramsPK      = "PROGRAM"
)

func userPK(userID string) string            { return "USER#" + userID }
func authPK(authID string) string            { return "AUTH#" + authID }
func categorySK(categoryID string) string    { return "CATEGORY#" + categoryID }
func programPK(programID string) string      { return "PROGRAM#" + programID }
func artisanKey(artisanID string) string     { return "ARTISAN#" + artisanID }
func applicationPK(appID string) string      { return "APPLICATION#" + appID }
func applicantKey(applicantID string) string { return "APPLICANT#" + applicantID }

func categoryNamePK(name string) string {
	return "CATEGORY_NAME#" + strings.ToLower(strings.TrimSpace(name))
}

func timeOrderedSK(createdAt, id string) string { return createdAt + "#" + id }
