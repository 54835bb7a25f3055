package services

import (
	"fmt"
)

// Keys of the JSON object the model is told to return.
const (
	KeyJDMatch         = "JD Match"
	KeyMissingKeywords = "MissingKeywords"
	KeyProfileSummary  = "Profile Summary"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildATSPrompt creates the ATS evaluation prompt. Both inputs are embedded verbatim and either may be empty.
func (pb *PromptBuilder) BuildATSPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`Hey, act like a skilled and experienced application tracking system with a deep understanding
of the tech field, software engineering, data science, data analysis, and big data engineering.
Your task is to evaluate the resume based on the given job description. You must consider the
job market is very competitive and provide the best assistance for improving resumes. Assign a
percentage match based on the JD and identify missing keywords with high accuracy.

Resume:
%s

Job Description:
%s

I want the response in one single string with the structure:
{"%s":"%%", "%s":[], "%s":""}

Return ONLY the JSON object, no markdown and no extra text.`,
		resumeText, jobDescription, KeyJDMatch, KeyMissingKeywords, KeyProfileSummary)
}
