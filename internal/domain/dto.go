package domain

type RoleType string

const (
	RoleUser  RoleType = "user"
	RoleAdmin RoleType = "admin"
)

type AccountType string

const (
	AccountTypeSavings AccountType = "Savings"
	AccountTypeCurrent AccountType = "Current"
)

type GenderType string

const (
	GenderMale   GenderType = "Male"
	GenderFemale GenderType = "Female"
)

type TransactionType string

const (
	TransactionDeposit    TransactionType = "deposit"
	TransactionWithdrawal TransactionType = "withdrawal"
	TransactionLoan       TransactionType = "loan"
	TransactionLoanPaid   TransactionType = "loan_paid"
	TransactionTransfer   TransactionType = "transfer"
)

type NotificationStatusType string

const (
	NotificationStatusPending NotificationStatusType = "pending"
	NotificationStatusSent    NotificationStatusType = "sent"
	NotificationStatusFailed  NotificationStatusType = "failed"
)

// NotificationTemplate имя html шаблона письма. Совпадает с именем файла шаблона без расширения.
type NotificationTemplate string

const (
	TemplateDeposit          NotificationTemplate = "deposit"
	TemplateWithdraw         NotificationTemplate = "withdraw"
	TemplateLoanRequest      NotificationTemplate = "loan_request"
	TemplateLoanApproval     NotificationTemplate = "loan_approval"
	TemplateLoanPaid         NotificationTemplate = "loan_paid"
	TemplateTransferSent     NotificationTemplate = "transfer_sent"
	TemplateTransferReceived NotificationTemplate = "transfer_received"
	TemplatePasswordChanged  NotificationTemplate = "password_changed"
)
