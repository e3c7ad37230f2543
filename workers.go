package main

import (
	"context"

	"github.com/google/uuid"

	"hlsbot/notify"
	"hlsbot/pipeline"
)

var processor *pipeline.Processor
var jobs = make(chan *pipeline.Job, 16)

// submitJob queues a job from the HTTP surface; status goes to the log.
func submitJob(path, name, caption string) {
	jobs <- &pipeline.Job{
		ID:      uuid.Must(uuid.NewV7()).String(),
		Source:  path,
		Name:    name,
		Caption: caption,
		Notify:  notify.Log{Logger: log},
	}
}

// submitChatJob queues a job from the chat transport; status goes back to
// the chat that sent the video.
func submitChatJob(path, name, caption string, chatID int64) {
	jobs <- &pipeline.Job{
		ID:      uuid.Must(uuid.NewV7()).String(),
		Source:  path,
		Name:    name,
		Caption: caption,
		ChatID:  chatID,
	}
}

// jobWorker processes one job at a time. Staging directories are disjoint
// by slug, so queued jobs never touch the same tree.
func jobWorker() {
	for job := range jobs {
		log.Infof("job %s: processing %s", job.ID, job.Name)
		if err := processor.Process(context.Background(), job); err != nil {
			log.Errorf("job %s: %v", job.ID, err)
			continue
		}
		log.Infof("job %s: done", job.ID)
	}
}
