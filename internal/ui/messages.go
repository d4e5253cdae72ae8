package ui

import "vidsqueeze/internal/progress"

type jobUpdateMsg struct {
	U progress.Update
}

type jobLogMsg struct {
	L progress.Log
}

type jobResultMsg struct {
	R progress.Result
}

type startNextMsg struct{}

type allDoneMsg struct{}
