package repoargs

type RepositoryName string

const (
	UserRepoName         RepositoryName = "user"
	AccountRepoName      RepositoryName = "account"
	AddressRepoName      RepositoryName = "address"
	TransactionRepoName  RepositoryName = "transaction"
	NotificationRepoName RepositoryName = "notification"
)

// BatchExecQueryRow коллбэк результата одного запроса батча.
type BatchExecQueryRow func(i int, err error)
