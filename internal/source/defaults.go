package source

// IdeaAdapters returns the default feed set for the idea pipeline.
func IdeaAdapters() []Adapter {
	return []Adapter{
		NewRedditIdeas(),
		NewHackerNews(),
	}
}

// JobAdapters returns the default feed set for the job pipeline.
func JobAdapters() []Adapter {
	return []Adapter{
		NewRedditJobs(),
		NewRemotive(),
		NewRemoteOK(),
		NewWeWorkRemotely(),
		NewArbeitnow(),
		NewJobicy(),
	}
}
