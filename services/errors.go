package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ресурс не найден (универсальная)
	ErrNotFound = errors.New("requested resource not found")

	// Ошибки валидации и бизнес-правил
	ErrValidationFailed   = errors.New("validation failed")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTeamNameRequired   = errors.New("team name is required")
	ErrTeamRosterSize     = errors.New("a rated team must have exactly four members")
	ErrInvalidBestOf      = errors.New("best-of must be a positive odd number")
	ErrInvalidGroupType   = errors.New("invalid group type")

	// Ошибки групп и матчмейкинга
	ErrGroupNotLooking    = errors.New("group is not looking for a match")
	ErrGroupFull          = errors.New("group is already full")
	ErrGroupMergeOverflow = errors.New("merged group would exceed the roster size")
	ErrGroupSeasonMixed   = errors.New("groups belong to different seasons")
	ErrGroupTypeMixed     = errors.New("groups have different types")
	ErrSelfMerge          = errors.New("a group cannot merge with itself")

	// Ошибки счёта серии
	ErrScoreInvalid       = errors.New("reported score is not a legal best-of series state")
	ErrMatchAlreadyFinal  = errors.New("match is already finalized")
	ErrMatchNotInProgress = errors.New("match is not in progress")

	// Ошибки конфликтов
	ErrUserEmailConflict = errors.New("email address is already in use")
	ErrMemberConflict    = errors.New("user is already a member of a group")

	// Ошибки аутентификации и авторизации
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrForbiddenOperation   = errors.New("operation not allowed for the current user")
	ErrCaptainOnly          = errors.New("only the group captain can perform this action")

	// Ошибки, специфичные для сущностей
	ErrUserNotFound       = errors.New("user not found")
	ErrTeamNotFound       = errors.New("team not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrMatchNotFound      = errors.New("match not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrStageNotFound      = errors.New("stage not found")

	// Ошибки турниров
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")
	ErrTournamentNotActive               = errors.New("tournament is not active")
	ErrProgressionInvalid                = errors.New("bracket progression is invalid")
	ErrBracketTypeUnsupported            = errors.New("bracket type has no stage generator")
	ErrNotEnoughTeams                    = errors.New("not enough registered teams to build the stage")
)
