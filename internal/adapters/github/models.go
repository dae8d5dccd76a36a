package github

import "time"

// User is a partial GitHub user document
type User struct {
	ID          int64     `json:"id"`
	Login       string    `json:"login"`
	Type        string    `json:"type"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio"`
	Followers   int       `json:"followers"`
	Following   int       `json:"following"`
	PublicRepos int       `json:"public_repos"`
	CreatedAt   time.Time `json:"created_at"`
	HTMLURL     string    `json:"html_url"`
}

// Repo is a partial GitHub repository document with fields we use
type Repo struct {
	Name          string     `json:"name"`
	FullName      string     `json:"full_name"`
	Owner         Owner      `json:"owner"`
	DefaultBranch string     `json:"default_branch"`
	Language      string     `json:"language"`
	Size          int        `json:"size"` // KB
	ForksCount    int        `json:"forks_count"`
	Stargazers    int        `json:"stargazers_count"`
	OpenIssues    int        `json:"open_issues_count"`
	Fork          bool       `json:"fork"`
	Archived      bool       `json:"archived"`
	CreatedAt     time.Time  `json:"created_at"`
	PushedAt      *time.Time `json:"pushed_at"`
}

// Owner is the login part of a repository owner
type Owner struct {
	Login string `json:"login"`
}

// Commit is the slice of a REST commit listing we keep
type Commit struct {
	SHA    string `json:"sha"`
	Commit struct {
		Author struct {
			Date time.Time `json:"date"`
		} `json:"author"`
		Committer struct {
			Date time.Time `json:"date"`
		} `json:"committer"`
	} `json:"commit"`
}

// When prefers the author date and falls back to the committer date
func (c Commit) When() time.Time {
	if !c.Commit.Author.Date.IsZero() {
		return c.Commit.Author.Date
	}
	return c.Commit.Committer.Date
}

// History is the newest first commit timestamps plus the branch total
type History struct {
	Commits []time.Time
	Total   int
}

// RateStatus is the core REST quota
type RateStatus struct {
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	Reset     time.Time `json:"reset"`
}
