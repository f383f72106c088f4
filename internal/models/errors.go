package models

import "errors"

var (
	// ErrGeneral is used for all errors where we cannot provide more details to the user
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")

	// Pending transaction errors
	ErrAlreadyProcessed = errors.New("this pending transaction has already been confirmed or cancelled")
	ErrIncompleteData   = errors.New("amount, category, description, date and type must all be set before a pending transaction can be approved")
	ErrPendingNoOwner   = errors.New("this pending transaction does not belong to any user")

	// Validation errors
	ErrInvalidTransactionType = errors.New("the transaction type must be either expense or income")
	ErrInvalidDate            = errors.New("the date must be in YYYY-MM-DD format")
	ErrAmountNotPositive      = errors.New("the amount must be larger than zero")

	// Uniqueness errors, translated from database constraint violations
	ErrUsernameTaken         = errors.New("this username is already registered")
	ErrEmailTaken            = errors.New("this email is already registered")
	ErrCategoryNameNotUnique = errors.New("the category name must be unique for the user")
)
