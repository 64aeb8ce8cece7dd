package model

import (
	"fmt"
	"slices"
	"time"
)

func NewTask(id string, taskType TaskType) *Task {
	return &Task{
		BaseElement: newBaseElement(id),

		Model:    newTaskModel(taskType),
		taskType: taskType,
	}
}

type Task struct {
	BaseElement
	activityMarkers

	// Kind specific model - *UserTask, *ServiceTask, *ScriptTask, *MessageTask, *BusinessRuleTask or nil for TASK and MANUAL_TASK.
	Model any

	multiInstance *MultiInstance
	taskType      TaskType
}

func newTaskModel(taskType TaskType) any {
	switch taskType {
	case TaskBusinessRule:
		return &BusinessRuleTask{}
	case TaskReceive, TaskSend:
		return &MessageTask{}
	case TaskScript:
		return &ScriptTask{}
	case TaskService:
		return &ServiceTask{}
	case TaskUser:
		return &UserTask{}
	default:
		return nil
	}
}

func (t *Task) AddCandidateGroup(groupId string) error {
	userTask := t.UserTask()
	if userTask == nil {
		return t.notUserTask("failed to add candidate group")
	}
	if !slices.Contains(userTask.CandidateGroups, groupId) {
		userTask.CandidateGroups = append(userTask.CandidateGroups, groupId)
	}
	return nil
}

func (t *Task) AddCandidateUser(userId string) error {
	userTask := t.UserTask()
	if userTask == nil {
		return t.notUserTask("failed to add candidate user")
	}
	if !slices.Contains(userTask.CandidateUsers, userId) {
		userTask.CandidateUsers = append(userTask.CandidateUsers, userId)
	}
	return nil
}

func (t *Task) AssignToUser(userId string) error {
	userTask := t.UserTask()
	if userTask == nil {
		return t.notUserTask("failed to assign task")
	}
	userTask.Assignee = userId
	return nil
}

func (t *Task) BusinessRuleTask() *BusinessRuleTask {
	v, _ := t.Model.(*BusinessRuleTask)
	return v
}

func (t *Task) ElementType() ElementType {
	return ElementTask
}

func (t *Task) HasLoop() bool {
	return t.HasMarker(MarkerLoop)
}

func (t *Task) IsMultiInstance() bool {
	return t.IsParallelMultiInstance() || t.IsSequentialMultiInstance()
}

func (t *Task) IsParallelMultiInstance() bool {
	return t.HasMarker(MarkerParallelMultiInstance)
}

func (t *Task) IsScriptTask() bool {
	return t.taskType == TaskScript
}

func (t *Task) IsSequentialMultiInstance() bool {
	return t.HasMarker(MarkerSequentialMultiInstance)
}

func (t *Task) IsServiceTask() bool {
	return t.taskType == TaskService
}

func (t *Task) IsUserTask() bool {
	return t.taskType == TaskUser
}

func (t *Task) MessageTask() *MessageTask {
	v, _ := t.Model.(*MessageTask)
	return v
}

// MultiInstance returns the multi-instance configuration or nil, if the task has no multi-instance marker.
func (t *Task) MultiInstance() *MultiInstance {
	if !t.IsMultiInstance() {
		return nil
	}
	if t.multiInstance == nil {
		t.multiInstance = &MultiInstance{ElementVariable: defaultElementVariable}
	}
	t.multiInstance.Sequential = t.IsSequentialMultiInstance()
	return t.multiInstance
}

func (t *Task) ScriptTask() *ScriptTask {
	v, _ := t.Model.(*ScriptTask)
	return v
}

func (t *Task) ServiceTask() *ServiceTask {
	v, _ := t.Model.(*ServiceTask)
	return v
}

func (t *Task) SetMultiInstanceParallel(collection string, elementVariable string) {
	t.setMultiInstance(MarkerParallelMultiInstance, collection, elementVariable)
}

func (t *Task) SetMultiInstanceSequential(collection string, elementVariable string) {
	t.setMultiInstance(MarkerSequentialMultiInstance, collection, elementVariable)
}

// SetScript turns the task into a script task. An empty format defaults to javascript.
func (t *Task) SetScript(script string, scriptFormat string) {
	if scriptFormat == "" {
		scriptFormat = defaultScriptFormat
	}

	t.taskType = TaskScript
	t.Model = &ScriptTask{Script: script, ScriptFormat: scriptFormat}
}

func (t *Task) String() string {
	return fmt.Sprintf("%s '%s'", title(t.taskType.String()), t.Name)
}

func (t *Task) TaskType() TaskType {
	return t.taskType
}

func (t *Task) UserTask() *UserTask {
	v, _ := t.Model.(*UserTask)
	return v
}

func (t *Task) isActivity() {}

func (t *Task) isFlowObject() {}

func (t *Task) notUserTask(errorTitle string) error {
	return newConfigurationError(errorTitle, "task %s is of type %s, not USER_TASK", t.id, t.taskType)
}

func (t *Task) setMultiInstance(marker ActivityMarker, collection string, elementVariable string) {
	if elementVariable == "" {
		elementVariable = defaultElementVariable
	}

	t.AddMarker(marker)

	multiInstance := t.MultiInstance()
	multiInstance.Collection = collection
	multiInstance.ElementVariable = elementVariable
}

const (
	defaultElementVariable = "item"
	defaultScriptFormat    = "javascript"
)

type BusinessRuleTask struct {
	RuleImplementation string
	DecisionRef        string
}

// MessageTask is the model of send and receive tasks.
type MessageTask struct {
	MessageRef  string
	Operation   string
	Instantiate bool // Receive task only: creates a process instance on message arrival.
}

// MultiInstance configures the execution of an activity for each element of a collection.
type MultiInstance struct {
	Sequential          bool
	LoopCardinality     string
	CompletionCondition string
	Collection          string
	ElementVariable     string
}

type ScriptTask struct {
	Script       string
	ScriptFormat string
}

type ServiceTask struct {
	Implementation string
	OperationRef   string
}

type UserTask struct {
	Assignee        string
	CandidateGroups []string
	CandidateUsers  []string
	DueDate         time.Time
	Priority        *int
	FormKey         string
}

type TaskType int

const (
	TaskBusinessRule TaskType = iota + 1
	TaskManual
	TaskPlain
	TaskReceive
	TaskScript
	TaskSend
	TaskService
	TaskUser
)

func MapTaskType(s string) TaskType {
	switch s {
	case "BUSINESS_RULE_TASK":
		return TaskBusinessRule
	case "MANUAL_TASK":
		return TaskManual
	case "TASK":
		return TaskPlain
	case "RECEIVE_TASK":
		return TaskReceive
	case "SCRIPT_TASK":
		return TaskScript
	case "SEND_TASK":
		return TaskSend
	case "SERVICE_TASK":
		return TaskService
	case "USER_TASK":
		return TaskUser
	default:
		return 0
	}
}

func (v TaskType) MarshalJSON() ([]byte, error) {
	return marshalEnum(v.String())
}

func (v TaskType) String() string {
	switch v {
	case TaskBusinessRule:
		return "BUSINESS_RULE_TASK"
	case TaskManual:
		return "MANUAL_TASK"
	case TaskPlain:
		return "TASK"
	case TaskReceive:
		return "RECEIVE_TASK"
	case TaskScript:
		return "SCRIPT_TASK"
	case TaskSend:
		return "SEND_TASK"
	case TaskService:
		return "SERVICE_TASK"
	case TaskUser:
		return "USER_TASK"
	default:
		return ""
	}
}

func (v *TaskType) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, "task type", func(s string) bool {
		*v = MapTaskType(s)
		return *v != 0
	})
}
